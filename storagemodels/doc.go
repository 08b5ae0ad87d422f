/*
Package storagemodels defines the shared data shapes crossing the storage
boundary: the FeedRow tagged union returned by partition scans, the ScanParams
describing one bounded range scan, and the serialized cache envelope.

FeedRow carries a superset of fields across its three variants (note,
notification, reaction), discriminated by RowOrigin. Accessor methods return
the field of the active variant so the scanner can advance its cursor without
switching on the origin at every call site.
*/
package storagemodels
