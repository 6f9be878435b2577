// Package connectors provides the archive sources membridge reads from.
// Each connector implements the driven FileDiscovery and ContentLoader
// ports for one kind of storage. The filesystem connector is the only one.
package connectors
