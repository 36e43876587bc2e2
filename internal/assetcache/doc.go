// Package assetcache memoizes remote images by URL.
//
// A Cache fetches a URL on a miss, decodes the blob (png, jpeg, gif) and keeps
// it in memory under two bounds: a maximum number of entries and a maximum
// total of raw bytes. The least recently used entries are evicted first when
// either bound is exceeded.
//
// The cache never fails outward: a fetch or decode error yields a nil *Image
// and nothing is stored. Concurrent misses for the same URL are not merged;
// each caller fetches on its own and the last insert wins.
package assetcache
