// Package lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains the Redis session store, the logo file store, the Resend
// email client and shared string utilities.
package lib
