/*
Package htlc defines the common types and interfaces shared by the escrow,
factory and ledger packages, as well as implementations of some of the
simpler components (when interfaces would be too much overhead).

We pass context through context.Context between the host and the
extensions. The host stores per call information in it, such as the block
height, the caller identity, the logger and the record sink.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set to avoid lower-level modules
overwriting the value (eg. height, caller).
*/
package htlc
