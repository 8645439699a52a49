// Package leaderboard keeps the stars and creator points rankings as redis
// sorted sets. Boards are patched as scores change and fully rebuilt from
// the users table when a sync message arrives.
package leaderboard
