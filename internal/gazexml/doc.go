// Package gazexml reads gaze logs out of XML session files and writes cleaned
// logs back into them.
//
// A session file holds gaze samples as attribute-only elements (by default
// <response .../>) inside a container element directly under the root (by
// default <gazes>). Everything else in the file is metadata this package keeps
// but never interprets: the loaded Document is an opaque handle that is handed
// back unchanged apart from the container's children.
package gazexml
