package version

var RevisionFrom = revision
