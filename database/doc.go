package database

// Package database opens the SQL connection pool shared by the event store.
// Both SQLite (the default, for single-process use) and PostgreSQL drivers are
// registered here so callers only need to pick a driver name. The pool itself
// belongs to the caller; the store borrows a connection per statement.
