// Package app is the composition root of whattocook.
//
// # Overview
//
// Run wires configuration, logging, the saved meal database, the network
// services and the UI together, then blocks in the TUI until the user quits
// or the context is cancelled.
//
// # Startup
//
//  1. Load ~/.config/whattocook/config.toml (missing file means defaults)
//  2. Open the JSON log file under the data directory
//  3. Open saved.db and load the saved meal list from it
//  4. Build the TheMealDB client and the ingredient search factory
//  5. Load preferences (theme, remembered ingredients)
//  6. Start the TUI with a fresh store mailbox
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read config
//	       ├─────> logging.New()        JSON log file
//	       ├─────> savedb.Open()        Saved meals (bbolt)
//	       ├─────> mealdb.NewClient()   Random, categories, meals, images
//	       ├─────> searchFactory()      One search client per selection
//	       └─────> ui.Run()             Start TUI (blocks)
//
// # Headless Commands
//
// RandomMeal, SavedMeals and SearchMeals drive the same screen stores
// without a terminal UI. A driver stands in for the navigators and drains
// the store mailbox on the calling goroutine until the wanted screen opens
// or its list settles.
//
// # Error Handling
//
// Failing to read the config, open the log or open the saved database is
// fatal and returned from Run. Network failures never are: the screens show
// them and offer a retry.
package app
