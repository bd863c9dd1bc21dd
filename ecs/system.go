package ecs

// System represents a behavior that runs once per frame. Systems may carry
// Query and Singleton fields, which the Scheduler initializes on Register,
// as well as their own state kept between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
