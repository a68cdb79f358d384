/*
Package domain contains the passive data types shared by the weldr
pipeline: paths and their sampled weld points, the event variants that
flow through the two-pass pipeline, spatial bounds, and the error
taxonomy surfaced by the entry point.

Types here carry no behavior beyond small accessors; all processing
lives in the sampler, sequence, and pipeline packages.
*/
package domain
