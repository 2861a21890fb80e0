// Packages lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It currently holds the Prometheus metrics manager (lib/metrics).
package lib
