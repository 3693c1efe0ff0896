// Package courier implements the courier availability record consumed by
// the geospatial directory: identity, last reported location, online
// toggle, and the verification outcome that gates dispatch eligibility.
package courier
