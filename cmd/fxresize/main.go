// Command fxresize scales a grayscale image with fixed-point bilinear
// interpolation and shows the result in the terminal.
//
//	fxresize -w 800 photo.png
//	fxresize -horizontal -w 800 -o wide.png photo.png
package main

import "github.com/Fepozopo/fxresize/pkg/cli"

func main() {
	cli.RunCLI()
}
