/*
Package nft provides the ownership record of non-fungible tokens.

A token has exactly one owner. The owner can approve other accounts to
transfer the token on their behalf. Every approval is identified by an
approval ID that is unique for the token, so that a transfer can require
that the approval used was not replaced in the meantime.

Transferring a token clears all approvals.
*/
package nft
