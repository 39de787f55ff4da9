/*
Package payout computes how the proceeds of a token sale are split between
the token owner and the creator of the collection.

The creator royalty is configured once, at genesis, as a rate expressed in
basis points. For a given balance the creator receives the rate applied to
the balance, rounded down, and the owner receives the rest. The sum of all
shares is always equal to the balance.

Two operations are exposed. The "nft_payout" query returns the split for the
current owner. The "nft_transfer_payout" message computes the split and
transfers the token in a single transaction, returning the split computed
before the transfer.
*/
package payout
