package store

// Route names a UI view.
type Route string

const (
	RouteHome  Route = "Home"
	RouteLogin Route = "Login"
)

// Navigator switches the UI to another view.
type Navigator interface {
	Push(route Route)
}

type nopNavigator struct{}

func (nopNavigator) Push(Route) {}
