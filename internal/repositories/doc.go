// package repositories provides the local persistence layer.
//
// Repositories wrap the sqlite database opened by shared.NewDatabase and
// store the last successful recommendation batch per (profile, intent) pair
// plus a lightweight show cache for offline listing.
package repositories
