/*
Package domain holds the core types of the capability engine: the Capability
behavior contract, declarative descriptors and sheets used at tree build
time, the evaluation context threaded through every tick, and the lifecycle
event types consumed by observability hooks.

The package is dependency-free apart from the tag and aggregate primitives;
everything stateful (tree nodes, the tick driver) lives in the runtime.
*/
package domain
