package types

// Model represents a discoverable model artifact on disk.
type Model struct {
	// Stable identifier for the model.
	// example: resnet18.pt
	ID string `json:"id" example:"resnet18.pt"`
	// Human-friendly name.
	// example: resnet18.pt
	Name string `json:"name" example:"resnet18.pt"`
	// Absolute path to the model artifact on disk.
	// example: /home/user/models/resnet18.pt
	Path string `json:"path" example:"/home/user/models/resnet18.pt"`
	// Artifact format (e.g., torchscript).
	// example: torchscript
	Format string `json:"format,omitempty" example:"torchscript"`
}
