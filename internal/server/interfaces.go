package server

// Server is the lifecycle contract every transport server in this package
// satisfies. RunServer blocks for the life of the listener; Shutdown drains
// in-flight requests and releases resources.
type Server interface {
	RunServer()
	Shutdown()
}
