// Package screen defines every screen of whattocook as a state.Store: its
// state, the closed sets of actions and effects, the pure reducer and the
// effect handler, plus the navigator contracts the effect handlers drive.
//
// Screens form a tree rooted at the app store:
//
//	app ──▶ menu ─┬─▶ categories ──▶ meals ──▶ meal
//	              ├─▶ meal (random)
//	              ├─▶ meals (saved) ──▶ meal
//	              └─▶ ingredients ──▶ meals (search results) ──▶ link
//
// A navigation effect builds the child store from the parent's environment,
// sharing the saved list, the services and the runtime, and narrowing the
// navigator through its accessor. It then hands the child to the navigator,
// which decides how to present it. The search results list uses the same
// meals store as every other list; only its navigator differs.
//
// Actions and effects are interfaces with an unexported marker method. A
// reducer or handler given a value outside its set panics.
package screen
