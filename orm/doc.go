/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* It has a primary key chosen by the caller.
* It may possess one or more secondary indexes (1:1 or 1:N).
* Easy queries for one and iteration.

Insert provides create-if-absent semantics, which is what extensions use
to guarantee that a derived key is claimed at most once.
*/
package orm
