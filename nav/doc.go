// Package nav wires the voxel grid, the surface classifier, the navigation
// graph and the path finder into one World.
//
// An edit flows through the stages as explicit RebuildRequest values:
//
//	Edit(x, y, z, t)
//	  └─ grid.Set             -> RebuildRequest{edited key}
//	      └─ Classifier        -> RebuildRequest{changed surfaces}
//	          └─ Graph         -> changed waypoints
//
// Every stage finishes before the next one starts, and queries never see a
// half-applied edit. World is safe for concurrent readers; edits take an
// exclusive lock.
package nav
