package datarecording

import "github.com/spikelab/neurotics/sim"

var _ DataRecorder = (*SQLiteWriter)(nil)
var _ DataReader = (*SQLiteReader)(nil)

var _ sim.TimestepReporter = (*RunRecorder)(nil)
var _ sim.SpikeActuator = (*RunRecorder)(nil)
var _ sim.RunEndHandler = (*RunRecorder)(nil)
