// Package loader provides the feature loading system of the control plane.
//
// Each feature implements the Feature interface and registers its own routes.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager loads the enabled features in registration order.
package loader
