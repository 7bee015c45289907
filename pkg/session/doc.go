/*
Package session manages named renaming sessions.

A Manager owns one shared ports.IDSource and any number of rename.Session
values opened against it, so that every session it hands out numbers into one
disjoint integer space. WithIsolation switches the policy to one fresh source
per session.
*/
package session
