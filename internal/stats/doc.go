// Package stats answers the dashboard's queries over a loaded dataset:
// season standings, metric leaderboards, entity trend series and table
// metadata. Every function is pure; invalid inputs return the query
// sentinel errors from the errors package and empty results are not
// errors.
package stats
