package lanelet

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "lanelet")
