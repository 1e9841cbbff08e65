package views

// entryWindow tracks the selected Was entry and the page of entries
// around it.
type entryWindow struct {
	size   int
	offset int
	cursor int
	total  int
}

func newEntryWindow(size int) *entryWindow {
	if size <= 0 {
		size = 10
	}
	return &entryWindow{size: size}
}

// resize keeps the cursor on a valid entry after a reload
func (w *entryWindow) resize(total int) {
	w.total = total
	w.cursor = max(0, min(w.cursor, total-1))
	w.follow()
}

func (w *entryWindow) up() {
	if w.cursor > 0 {
		w.cursor--
		w.follow()
	}
}

func (w *entryWindow) down() {
	if w.cursor < w.total-1 {
		w.cursor++
		w.follow()
	}
}

// visible returns the half-open range of entries on the current page
func (w *entryWindow) visible() (int, int) {
	return w.offset, min(w.offset+w.size, w.total)
}

func (w *entryWindow) pages() int {
	if w.total == 0 {
		return 1
	}
	return (w.total + w.size - 1) / w.size
}

func (w *entryWindow) page() int {
	return w.offset/w.size + 1
}

func (w *entryWindow) follow() {
	w.offset = (w.cursor / w.size) * w.size
}
