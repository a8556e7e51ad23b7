/*
Package utils contains decorators that every application stack needs:
savepoints isolating the writes of a single transaction, panic recovery,
logging, metrics and result tagging.
*/
package utils
