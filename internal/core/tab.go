package core

// Tabs address the playlist stack from the top: tab 0 is the active
// playlist, tab k is the k-th suspended playlist below it. Storage is
// chronological, bottom first, with the active playlist conceptually
// appended last. These two functions are the only place that reflection
// is computed.

// TabToStorage converts a tab index to a bottom-first storage index in a
// stack of n playlists (active included).
func TabToStorage(tab, n int) int {
	return n - 1 - tab
}

// StorageToTab converts a bottom-first storage index to a tab index in a
// stack of n playlists (active included).
func StorageToTab(i, n int) int {
	return n - 1 - i
}
