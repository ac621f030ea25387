// Package noaa implements queries to NOAA's Climate Data Online (CDO) v2 web
// service to retrieve daily precipitation history. Data is requested per
// location over a window of days (see DataQuery) and arrives in pages of at most
// PageSize results; Client.Precipitation walks every page and groups the
// results by date. Values are in inches (standard units).
package noaa
