// internal is internal packages for Netdog.
//
// The watchdog package is the core control loop, and it depends on the
// adapter, probe, and schedule packages. The store package is decoupled
// from them via small interfaces like probe.Reporter and watchdog.Store.
//
// The nderr package and the testutil package are helpers used by the
// other packages.
package internal
