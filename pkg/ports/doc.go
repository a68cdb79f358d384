/*
Package ports defines the driven-port interfaces of the weldr core.

The pipeline broadcasts its replay pass to any number of Consumer
implementations; the instruction-stream, SVG animation, and GIF
animation emitters all live behind this interface, and hosts can plug in
their own. RunConsumerContract exercises the behavioral contract any
implementation must satisfy.
*/
package ports
