package orion

// App creates the first window once the platform is ready. The returned
// window is registered by the loop, additional windows are added using
// Loop.Register.
type App interface {
	CreateFirstWindow(loop *Loop) (Window, error)
}

// Initializer is an optional interface of an App. EventLoopInit runs once,
// before the first window is created.
type Initializer interface {
	EventLoopInit(loop *Loop) Signal
}

// AppFunc adapts a function to the App interface.
type AppFunc func(loop *Loop) (Window, error)

func (fn AppFunc) CreateFirstWindow(loop *Loop) (Window, error) {
	return fn(loop)
}
