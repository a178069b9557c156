/*
Package ports defines the driven-side interfaces of the capability engine:
the registry that supplies capability declarations and instances at tree
build time, and the recorder that receives per-tick history snapshots.

Adapters under pkg/adapters provide the concrete implementations.
*/
package ports
