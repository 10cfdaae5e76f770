/*
Package orm provides an easy to use db wrapper for protobuf models.

Each model is stored under a bucket prefix, validated before every write and
encoded with the protobuf binary format, so that the persisted state can be
decoded by any external tool that knows the schema.
*/
package orm
