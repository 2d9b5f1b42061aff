// Package pipeline runs snapshot producer pages through a sequence of steps
// (fetch, convert, render) and processes many pages concurrently.
//
// A Pipeline handles a single page. Each step receives the page and fills in
// the next field. A failing step records its error on the page.
//
// BatchProcessor runs one fresh pipeline per page with a bounded number of
// goroutines (errgroup.SetLimit). A failed page never stops the others, and
// results keep the input order.
package pipeline
