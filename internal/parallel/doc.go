// Package parallel runs independent jobs on a small work-stealing pool.
//
// It is used for image I/O around the engine, such as decoding several
// input files at once. Filter kernels themselves always run sequentially.
package parallel
