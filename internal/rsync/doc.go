// Package rsync assembles rsync command lines and previews transfers.
//
// Nothing here runs rsync. BuildCommand is a pure mapping from a Config to
// the command string a user would paste into a shell:
//
//	rsync.BuildCommand(rsync.Config{
//		Direction: rsync.LocalToRemote,
//		LocalPath: "./site/",
//		Remote:    rsync.Endpoint{User: "deploy", Host: "web1", Path: "/srv/site/", Port: "2222"},
//		Options:   rsync.DefaultOptions(),
//	})
//	// rsync -vzP -e "ssh -p 2222" ./site/ deploy@web1:/srv/site/
//
// BuildPlan compares two directory listings and reports what a transfer
// would create, update or delete, honoring exclude patterns.
package rsync
