// Package rest provides an HTTP implementation of driven.ItemSource.
//
// The backend exposes GET {base}/api/{kind}. Older deployments disagree on
// how a listing is requested, so the source tries an ordered chain of query
// variants (?list, ?search=, ?q=, ?name=) until one answers 2xx and then
// prefers that variant for the kind. Requests are throttled with a token
// bucket and 429 responses pause the bucket until Retry-After.
package rest
