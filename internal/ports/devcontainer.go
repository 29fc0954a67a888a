package ports

// DevContainerPort pins the SDK container image tag in the dev
// container definition file.
type DevContainerPort interface {
	PinImage(path string, imageTag string) error
}
