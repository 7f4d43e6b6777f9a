// Package word splits identifiers and phrases into words and converts them
// between naming conventions.
//
// Every conversion except [Lower] and [Capitalize] first applies [Split], so
// any input convention converts to any output convention:
//
//	word.Snake("helloWorld")    // hello_world
//	word.Pascal("hello-world")  // HelloWorld
//	word.Upper("Hello World")   // HELLO_WORLD
//
// Case mapping follows the Unicode root locale.
package word
