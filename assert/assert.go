// Package assert checks host contracts, such as ticking the clock once per
// frame or never passing a negative delta. The checks panic when built with
// -tags debug and compile to nothing otherwise.
package assert
