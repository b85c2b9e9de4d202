package commands

import (
	"time"

	"github.com/andri/datasaver/pkg/sink"
)

var openSink = sink.Open
var now = time.Now
