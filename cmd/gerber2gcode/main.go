// Copyright 2018 Vasily Turchenko <turchenkov@gmail.com>. All rights reserved.
// Use of this source code is free

package main

import (
	"github.com/VasiliyTurchenko/gerber2gcode/cmd/gerber2gcode/cmd"
)

func main() {
	cmd.Execute()
}
