/*
Package escrow implements a two-party trade of assets.

A maker deposits an amount of asset A into a vault and declares the amount
of asset B it wants in return. Any taker can complete the trade by paying
the requested amount of asset B to the maker, receiving everything held by
the vault. Until then the maker can take the deposit back.

Both the escrow record and the vault wallet are stored under an address
derived from the maker and a seed chosen by the maker. The derivation
guarantees that the address has no private key, so funds held by the vault
can only be moved by this extension. Take and Refund destroy the record and
the vault together, and the address then reports not found.

Messages are addressed by selector: 0 is Make, 1 is Take and 2 is Refund.
*/
package escrow
