// Package loader provides the plugin-like feature loading system.
//
// It allows the application to register and initialize features (modules)
// dynamically. Each feature implements the Feature interface, which defines
// its lifecycle hooks and route registration logic.
//
// This architecture promotes modularity, allowing features like 'level',
// 'user' or 'leaderboard' to be developed and tested in isolation.
package loader
