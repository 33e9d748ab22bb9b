package statsd

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/statline/statsd/pkg/util"
)

const (
	// DefaultHost is the default aggregator host.
	DefaultHost = "localhost"
	// DefaultPort is the default aggregator port.
	DefaultPort = 8125
	// DefaultProtocol is the default transport protocol.
	DefaultProtocol = "udp"
	// DefaultSampleRate is the default sampling rate applied when a call
	// does not carry its own.
	DefaultSampleRate = 1.0
)

// DefaultGlobalTags is the default list of tags added to all metrics.
var DefaultGlobalTags = Tags{}

const (
	// ParamHost is the name of parameter with the aggregator host.
	ParamHost = "host"
	// ParamPort is the name of parameter with the aggregator port.
	ParamPort = "port"
	// ParamProtocol is the name of parameter with the transport protocol.
	ParamProtocol = "protocol"
	// ParamPrefix is the name of parameter with the stat name prefix.
	ParamPrefix = "prefix"
	// ParamSuffix is the name of parameter with the stat name suffix.
	ParamSuffix = "suffix"
	// ParamGlobalTags is the name of parameter with the list of tags added to all metrics.
	ParamGlobalTags = "global-tags"
	// ParamSampleRate is the name of parameter with the default sampling rate.
	ParamSampleRate = "default-sample-rate"
)

// AddFlags adds flags to the specified FlagSet.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(ParamHost, DefaultHost, "Host of the statsd aggregator")
	fs.Int(ParamPort, DefaultPort, "Port of the statsd aggregator")
	fs.String(ParamProtocol, DefaultProtocol, "Protocol to use, 'udp' or 'tcp'")
	fs.String(ParamPrefix, "", "Prefix prepended to every stat name")
	fs.String(ParamSuffix, "", "Suffix appended to every stat name")
	fs.Float64(ParamSampleRate, DefaultSampleRate, "Default sampling rate, in (0,1]")
	//TODO Remove workaround when https://github.com/spf13/viper/issues/112 is fixed
	// https://github.com/spf13/viper/issues/200
	fs.String(ParamGlobalTags, strings.Join(DefaultGlobalTags, ","), "Comma-separated list of tags to add to all metrics")
}

// NewClientFromViper constructs a Client using configuration provided by Viper.
func NewClientFromViper(v *viper.Viper, logger logrus.FieldLogger) (*Client, error) {
	util.InitViper(v, "")
	v.SetDefault(ParamHost, DefaultHost)
	v.SetDefault(ParamPort, DefaultPort)
	v.SetDefault(ParamProtocol, DefaultProtocol)
	v.SetDefault(ParamPrefix, "")
	v.SetDefault(ParamSuffix, "")
	v.SetDefault(ParamGlobalTags, "")
	v.SetDefault(ParamSampleRate, DefaultSampleRate)

	var globalTags Tags
	if s := v.GetString(ParamGlobalTags); s != "" {
		globalTags = strings.Split(s, ",")
	}
	return NewClient(Config{
		Host:       v.GetString(ParamHost),
		Port:       v.GetInt(ParamPort),
		Protocol:   v.GetString(ParamProtocol),
		Prefix:     v.GetString(ParamPrefix),
		Suffix:     v.GetString(ParamSuffix),
		GlobalTags: globalTags,
		SampleRate: v.GetFloat64(ParamSampleRate),
	}, logger)
}
