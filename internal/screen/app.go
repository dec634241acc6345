package screen

import (
	"fmt"

	"github.com/five82/whattocook/internal/state"
)

// AppState is empty; the app store only exists to install the menu.
type AppState struct{}

// AppAction is Launched.
type AppAction interface{ appAction() }

// Launched is dispatched once when the program starts.
type Launched struct{}

func (Launched) appAction() {}

// AppEffect is NavigateToRoot.
type AppEffect interface{ appEffect() }

// NavigateToRoot builds the menu store and installs it as the root screen.
type NavigateToRoot struct{}

func (NavigateToRoot) appEffect() {}

type AppStore = state.Store[AppState, AppAction, AppEffect, AppEnv]

// NewAppStore returns the store that bootstraps a session.
func NewAppStore(rt state.Runtime, env AppEnv) *AppStore {
	return state.New(rt.Named("app"), AppState{}, ReduceApp, HandleApp, env)
}

// ReduceApp is the app reducer.
func ReduceApp(s AppState, action AppAction) (AppState, []AppEffect) {
	switch action.(type) {
	case Launched:
		return s, []AppEffect{NavigateToRoot{}}
	default:
		panic(fmt.Sprintf("screen: unknown app action %T", action))
	}
}

// HandleApp runs app effects.
func HandleApp(store *AppStore, effect AppEffect) {
	env := store.Env()
	switch effect.(type) {
	case NavigateToRoot:
		menu := NewMenuStore(store.Runtime(), MenuEnv{Shared: env.Shared, Navigator: env.Menu})
		env.Root.SetRoot(menu)
	default:
		panic(fmt.Sprintf("screen: unknown app effect %T", effect))
	}
}
