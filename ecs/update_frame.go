package ecs

type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Registry  *Registry
}

func newUpdateFrame(dt float64, registry *Registry) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Registry:  registry,
	}
}
