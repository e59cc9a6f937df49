// Package issue implements support tickets a customer files against one of their
// orders. Each ticket carries a message thread and a small status workflow:
// customers reopening a resolved ticket and staff picking up an open one both
// happen implicitly when a message is posted.
package issue
