// Command mlux views a Markdown file as rendered pages of images in a
// Kitty-graphics-protocol terminal, or renders one to PNG files, one per
// tile.
package main

func main() {
	Execute()
}
