/*
Package streams declares the typed contracts that bridge discrete
planning logic to continuously-valued quantities.

A Stream names an external generator (a Sampler): the domain atoms that
must hold to invoke it, its input and output variables, and the graph
atoms certified true for every produced output tuple. Four shapes exist:
a deterministic single-result function, an eager batch list, a lazy
pull-based generator, and a boolean test that certifies a condition
without producing outputs.

The Registry also owns the optimistic-object machinery: a pluggable
BoundPolicy decides how placeholder objects are shared across repeated
invocations with identical inputs, and Resolve substitutes verified
concrete values for placeholders afterwards.
*/
package streams
