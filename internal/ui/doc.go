// Package ui provides the terminal user interface for whattocook.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program that presents the screen stores of package
// screen. It owns no meal state of its own: every screen is a store, and the
// UI only renders the store's latest state and turns key presses into
// actions.
//
// # Package Structure
//
//   - app.go: Model, the mailbox listener and the Run function
//   - navigation.go: the view stack and the navigators the stores drive
//   - menu.go, categories.go, meals.go, detail.go, search.go: one view per screen
//   - list.go, layout.go: row selection, scrolling and the titled box
//   - theme.go, bgstyle.go, help.go, modal.go: styling and overlays
//   - settings.go: theme and last-search persistence through package prefs
//
// # Event Flow
//
//  1. Run builds the app store with navigators over a shared view stack
//  2. Init dispatches Launched, which installs the menu as the root view
//  3. Key presses dispatch actions on the top view's store
//  4. Navigation effects push views; esc pops them and the view's Leave hook
//     cancels whatever it still had in flight
//  5. Finished background tasks post a closure to the mailbox; listen turns it
//     into a runMsg so the dispatch happens on the Bubble Tea goroutine
//
// Because every Dispatch runs inside Update, stores never see two goroutines.
//
// # Navigators
//
// Meal lists show a selected meal according to a DetailStrategy. Category and
// saved lists push the detail view; search results only have a link, so they
// open it in the browser through the Opener instead.
//
// # Key Bindings
//
//   - j/k, g/G, ctrl+d/u: Move through lists
//   - enter: Open the selection, or run the search in the picker
//   - esc: Back
//   - r: Retry a failed list
//   - s/o: Save or unsave a meal, open its video
//   - /, space, c: Filter, pick and clear ingredients
//   - T: Cycle theme
//   - h/?: Help
//   - q or Ctrl+C: Exit
package ui
