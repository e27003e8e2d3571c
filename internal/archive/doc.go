// Package archive writes and reads the tar archive consumed by the
// kernel's embedded VFS.
//
// Archives are written with USTAR-compatible headers. The writer
// builds the archive at a temporary path in the destination directory
// and renames it into place only after every entry is written and the
// end-of-archive trailer is finalized, so readers never observe a
// truncated archive and a failed build leaves the destination
// untouched.
package archive
