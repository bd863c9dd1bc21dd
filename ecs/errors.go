package ecs

import "errors"

var (
	ErrFieldNotFound      = errors.New("ecs: field not found")
	ErrFieldType          = errors.New("ecs: field has unexpected type")
	ErrComponentNotFound  = errors.New("ecs: component not found")
	ErrDuplicateComponent = errors.New("ecs: entity already has component")
	ErrComponentOwned     = errors.New("ecs: component is attached to another entity")
	ErrEntityNotFound     = errors.New("ecs: entity not found")
)
