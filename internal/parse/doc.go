// Package parse builds a section tree of keybindings from a Hyprland-style
// configuration file.
//
// Headings are lines beginning at column 0 with one or more '#' followed by
// '!'. The marker length is the heading depth, so "#!" opens a depth-2
// section and "##!" nests beneath it. Bind directives are lines starting
// with "bind" (bind, binde, bindm, ...) or hidden behind the "#/#" prefix so
// they show up in the tree without being active in the window manager.
//
// A bind is kept only if it has at least four comma separated fields and its
// parameters do not carry the "[hidden]" marker. Anything after the first '#'
// in the parameters becomes the comment; otherwise a comment is generated
// from the dispatcher.
package parse
