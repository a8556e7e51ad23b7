/*
Package cash defines a simple implementation of sending coins
between wallets.

There is no logic in the coins (tokens), except that the balance
of any coin may not go below zero. Thus, this implementation is
referred to as cash. Simple and safe.

The Controller is the transfer primitive other extensions use to move
funds. Vaults are wallets kept in their own bucket. They are opened,
funded, released and closed only through the Vaults methods, and a plain
transfer to the address of a live vault is refused.
*/
package cash
