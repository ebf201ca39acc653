// Package ui implements the terminal screens: the post feed with its navbar,
// the post detail view, the new-post form, and the sign-in/sign-up form.
//
// Every server call runs as a bubbletea command on its own goroutine and
// reports back through a typed message carrying the request id it was issued
// with. A view only applies a completion whose id matches the latest request
// it started; anything else is a stale response from an abandoned action and
// is discarded. Model updates themselves happen on the single bubbletea
// event loop, so no view state is ever touched concurrently.
package ui
